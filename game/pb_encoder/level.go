// Package pb encodes levels in the protobuf wire format.
//
// The message layout is:
//
//	message Level {
//	  bytes    id               = 1;
//	  uint32   width            = 2;
//	  uint32   height           = 3;
//	  sint64   seed             = 4;
//	  uint32   corridor_width   = 5;
//	  double   branching_factor = 6;
//	  bytes    flags            = 7;
//	  repeated Position cleared = 8;
//	  int64    created_at       = 9; // unix nanoseconds
//	}
//
//	message Position {
//	  uint32 x = 1;
//	  uint32 y = 2;
//	}
package pb

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldID              protowire.Number = 1
	fieldWidth           protowire.Number = 2
	fieldHeight          protowire.Number = 3
	fieldSeed            protowire.Number = 4
	fieldCorridorWidth   protowire.Number = 5
	fieldBranchingFactor protowire.Number = 6
	fieldFlags           protowire.Number = 7
	fieldCleared         protowire.Number = 8
	fieldCreatedAt       protowire.Number = 9

	fieldX protowire.Number = 1
	fieldY protowire.Number = 2
)

var ErrMalformed = errors.New("malformed level encoding")

// Protobuf marshals levels.
type Protobuf struct{}

// MarshalLevel encodes l.
func (p *Protobuf) MarshalLevel(l *game.Level) ([]byte, error) {
	if l == nil || l.Grid == nil {
		return nil, errors.New("nil level")
	}

	var b []byte
	b = protowire.AppendTag(b, fieldID, protowire.BytesType)
	b = protowire.AppendBytes(b, l.ID[:])
	b = appendVarint(b, fieldWidth, uint64(l.Params.Width))
	b = appendVarint(b, fieldHeight, uint64(l.Params.Height))
	b = appendVarint(b, fieldSeed, protowire.EncodeZigZag(l.Params.Seed))
	b = appendVarint(b, fieldCorridorWidth, uint64(l.Params.CorridorWidth))
	b = protowire.AppendTag(b, fieldBranchingFactor, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(l.Params.BranchingFactor))
	b = protowire.AppendTag(b, fieldFlags, protowire.BytesType)
	b = protowire.AppendBytes(b, l.Grid.Flags())

	for _, pos := range l.ClearedWalls {
		var msg []byte
		msg = appendVarint(msg, fieldX, uint64(pos.X))
		msg = appendVarint(msg, fieldY, uint64(pos.Y))
		b = protowire.AppendTag(b, fieldCleared, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}

	b = appendVarint(b, fieldCreatedAt, uint64(l.CreatedAt.UnixNano()))
	return b, nil
}

// UnmarshalLevel decodes a level produced by MarshalLevel. Unknown fields are
// skipped.
func (p *Protobuf) UnmarshalLevel(b []byte) (*game.Level, error) {
	l := &game.Level{}
	var flags []byte

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldID && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: id: %v", ErrMalformed, protowire.ParseError(n))
			}
			id, err := uuid.FromBytes(v)
			if err != nil {
				return nil, fmt.Errorf("%w: id: %v", ErrMalformed, err)
			}
			l.ID = id
			b = b[n:]

		case num == fieldFlags && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: flags: %v", ErrMalformed, protowire.ParseError(n))
			}
			flags = append([]byte(nil), v...)
			b = b[n:]

		case num == fieldCleared && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: cleared wall: %v", ErrMalformed, protowire.ParseError(n))
			}
			pos, err := consumePosition(v)
			if err != nil {
				return nil, err
			}
			l.ClearedWalls = append(l.ClearedWalls, pos)
			b = b[n:]

		case num == fieldBranchingFactor && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: branching factor: %v", ErrMalformed, protowire.ParseError(n))
			}
			l.Params.BranchingFactor = math.Float64frombits(v)
			b = b[n:]

		case typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			switch num {
			case fieldWidth:
				l.Params.Width = int(v)
			case fieldHeight:
				l.Params.Height = int(v)
			case fieldSeed:
				l.Params.Seed = protowire.DecodeZigZag(v)
			case fieldCorridorWidth:
				l.Params.CorridorWidth = int(v)
			case fieldCreatedAt:
				l.CreatedAt = time.Unix(0, int64(v)).UTC()
			}
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	grid, err := maze.Restore(l.Params.Width, l.Params.Height, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	l.Grid = grid
	return l, nil
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func consumePosition(b []byte) (maze.Position, error) {
	var pos maze.Position
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return pos, fmt.Errorf("%w: position: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.VarintType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return pos, fmt.Errorf("%w: position: %v", ErrMalformed, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return pos, fmt.Errorf("%w: position: %v", ErrMalformed, protowire.ParseError(n))
		}
		switch num {
		case fieldX:
			pos.X = int(v)
		case fieldY:
			pos.Y = int(v)
		}
		b = b[n:]
	}
	return pos, nil
}
