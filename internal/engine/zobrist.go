package engine

import (
	"bizchess/internal/domain/board"
)

const zobristSeed = 0x9e3779b97f4a7c15

type zobristTable struct {
	squares       [2][len(board.Archetypes)][board.Size * board.Size]uint64
	competitorMov uint64
}

var zobrist = newZobristTable(zobristSeed)

func newZobristTable(seed uint64) *zobristTable {
	rng := splitmix64{state: seed}
	table := &zobristTable{}
	for side := range table.squares {
		for a := range table.squares[side] {
			for sq := range table.squares[side][a] {
				table.squares[side][a][sq] = rng.next()
			}
		}
	}
	table.competitorMov = rng.next()
	return table
}

// Hash keys a position by piece placement and side to move. Ply and market
// metadata do not influence the search and are left out.
func Hash(s *board.BoardState) uint64 {
	var hash uint64
	for _, p := range s.Pieces() {
		hash ^= zobrist.squares[p.Side][p.Archetype][p.Position.Y*board.Size+p.Position.X]
	}
	if s.Turn() == board.Competitor {
		hash ^= zobrist.competitorMov
	}
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
