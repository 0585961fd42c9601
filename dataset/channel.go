package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var ErrChannel = errors.New("unknown channel")

// Channel identifies a numeric dimension of a data point. Y2, Y3 and Y4 are
// secondary Y axes: traces store Y values and are assigned to one of them.
type Channel int8

const (
	X Channel = iota
	Y
	Y2
	Y3
	Y4
	Z
)

var Channels = []Channel{X, Y, Y2, Y3, Y4, Z}

func ParseChannel(str string) (Channel, error) {
	switch strings.ToUpper(strings.TrimSpace(str)) {
	case "X":
		return X, nil
	case "Y", "Y1":
		return Y, nil
	case "Y2":
		return Y2, nil
	case "Y3":
		return Y3, nil
	case "Y4":
		return Y4, nil
	case "Z":
		return Z, nil
	default:
		return X, fmt.Errorf("%s: %w", str, ErrChannel)
	}
}

func (c Channel) String() string {
	switch c {
	case X:
		return "X"
	case Y:
		return "Y"
	case Y2:
		return "Y2"
	case Y3:
		return "Y3"
	case Y4:
		return "Y4"
	case Z:
		return "Z"
	default:
		return "?"
	}
}

func (c Channel) IsY() bool {
	return c >= Y && c <= Y4
}

// Source gives the channel holding the values of c in a series.
func (c Channel) Source() Channel {
	if c.IsY() {
		return Y
	}
	return c
}
