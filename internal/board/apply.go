package board

// Apply plays a move and returns the resulting position as a new,
// independently owned state. It returns nil when the move is rejected;
// rejection is the normal fate of pseudo-legal artifacts and is never an
// error. The receiver is never modified.
//
// Checks are performed in a fixed order: pin pre-check, king-capture
// guard, move body, bookkeeping, self-check guard, and for castling the
// transit-square guard.
func (p *Position) Apply(m Move) *Position {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()

	piece := p.PieceAt(from)
	if piece == NoPiece || piece.Color() != us {
		return nil
	}
	pt := piece.Type()
	kingSq := p.KingSquare(us)

	// Pin pre-check: lifting the piece off its origin square must not
	// newly expose the king. Skipped for king moves, and when already in
	// check (the post-move guard decides evasion legality). A pinned
	// piece is rejected even for moves along its own pin ray.
	if pt != King && !p.IsSquareAttacked(kingSq, them) {
		trial := p.Copy()
		trial.removePiece(from)
		if trial.IsSquareAttacked(kingSq, them) {
			return nil
		}
	}

	// A pseudo-legal move may target the enemy king; that is never a
	// legal outcome. Hand-entered moves may also target a friendly piece.
	if p.Pieces[them][King].IsSet(to) || p.Occupied[us].IsSet(to) {
		return nil
	}

	n := p.Copy()
	captured := NoPiece

	switch {
	case m.IsCastling():
		var rookFrom, rookTo Square
		if to > from {
			rookFrom = NewSquare(7, from.Rank())
			rookTo = NewSquare(5, from.Rank())
		} else {
			rookFrom = NewSquare(0, from.Rank())
			rookTo = NewSquare(3, from.Rank())
		}
		n.movePiece(from, to)
		n.movePiece(rookFrom, rookTo)

	case m.IsEnPassant():
		var capturedSq Square
		if us == White {
			capturedSq = to - 8
		} else {
			capturedSq = to + 8
		}
		captured = n.removePiece(capturedSq)
		n.movePiece(from, to)

	default:
		if !n.IsEmpty(to) {
			captured = n.removePiece(to)
		}
		n.movePiece(from, to)
		if m.IsPromotion() {
			promo := m.Promotion()
			n.Pieces[us][Pawn] = n.Pieces[us][Pawn].Clear(to)
			n.Pieces[us][promo] = n.Pieces[us][promo].Set(to)
		}
	}

	// Castling rights follow the king and the corner rooks, whether they
	// move away or the enemy captures on the rook's home square.
	if pt == King {
		if us == White {
			n.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			n.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if from == A1 || to == A1 {
		n.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		n.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		n.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		n.CastlingRights &^= BlackKingSideCastle
	}

	// En-passant target exists only immediately after a double push.
	n.EnPassant = NoSquare
	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		n.EnPassant = Square((int(from) + int(to)) / 2)
	}

	// Pawn moves and captures are irreversible for the fifty-move rule.
	if pt == Pawn || captured != NoPiece {
		n.HalfMoveClock = 0
	} else {
		n.HalfMoveClock++
	}
	if us == Black {
		n.FullMoveNumber++
	}
	n.SideToMove = them

	// Self-check guard.
	if n.IsSquareAttacked(n.KingSquare(us), them) {
		return nil
	}

	// Castling must not start from, pass through or land on an attacked
	// square. Evaluated on the pre-move position.
	if m.IsCastling() {
		step := 1
		if to < from {
			step = -1
		}
		for sq := from; ; sq = Square(int(sq) + step) {
			if p.IsSquareAttacked(sq, them) {
				return nil
			}
			if sq == to {
				break
			}
		}
	}

	return n
}

// IsTerminal reports whether the side to move has no playable move.
// An empty pseudo-legal set is terminal outright; otherwise the state is
// terminal only if Apply rejects every pseudo-legal candidate.
func (p *Position) IsTerminal() bool {
	ml := p.GeneratePseudoLegalMoves()
	if ml.Len() == 0 {
		return true
	}
	for i := 0; i < ml.Len(); i++ {
		if p.Apply(ml.Get(i)) != nil {
			return false
		}
	}
	return true
}

// HasLegalMoves returns true if the side to move has at least one move
// Apply accepts.
func (p *Position) HasLegalMoves() bool {
	return !p.IsTerminal()
}

// IsCheckmate returns true if the side to move is in check with no legal
// response.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && p.IsTerminal()
}

// IsStalemate returns true if the side to move has no legal move but is
// not in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && p.IsTerminal()
}

// IsFiftyMoveDraw returns true once 100 plies have passed without a pawn
// move or capture.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.HalfMoveClock >= 100
}

// IsInsufficientMaterial returns true if neither side can deliver mate.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 ||
		p.Pieces[White][Rook]|p.Pieces[Black][Rook] != 0 ||
		p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}

	wMinor := p.Pieces[White][Knight].PopCount() + p.Pieces[White][Bishop].PopCount()
	bMinor := p.Pieces[Black][Knight].PopCount() + p.Pieces[Black][Bishop].PopCount()

	// K vs K, or K+minor vs K
	if wMinor+bMinor == 0 {
		return true
	}
	if wMinor <= 1 && bMinor == 0 {
		return true
	}
	if bMinor <= 1 && wMinor == 0 {
		return true
	}

	return false
}

// IsDraw returns true for stalemate, the fifty-move rule, or insufficient
// material.
func (p *Position) IsDraw() bool {
	if p.IsFiftyMoveDraw() || p.IsInsufficientMaterial() {
		return true
	}
	return p.IsStalemate()
}
