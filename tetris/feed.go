package tetris

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Placement is one token of a feed: a kind and the column its leftmost cell goes to.
type Placement struct {
	Kind   Kind
	Column int
	Line   int
}

// ParseFeed reads a feed made of lines of comma separated tokens. Every token
// is a shape letter followed by a column digit, e.g. "Q0,I4,T7".
func ParseFeed(r io.Reader) ([]Placement, error) {
	var placements []Placement
	scanner := bufio.NewScanner(r)
	var line int
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		for token := range strings.SplitSeq(text, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			p, err := parseToken(token)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			p.Line = line
			placements = append(placements, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read feed: %w", err)
	}
	return placements, nil
}

func parseToken(token string) (Placement, error) {
	if len(token) != 2 {
		return Placement{}, fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}
	k, err := ParseKind(token[:1])
	if err != nil {
		return Placement{}, err
	}
	d := token[1]
	if d < '0' || d > '9' {
		return Placement{}, fmt.Errorf("%w: %q has no column digit", ErrInvalidToken, token)
	}
	return Placement{Kind: k, Column: int(d - '0')}, nil
}

// Replay resets m and hard drops every tetromino its spawner hands out until
// the spawner runs dry or the game is over. It returns the lines cleared.
func Replay(m *Matrix) (int, error) {
	err := m.Reset()
	for err == nil {
		if _, err = m.Drop(); err != nil {
			break
		}
		_, err = m.LockDown()
	}
	if errors.Is(err, ErrFeedExhausted) {
		return m.LinesClear(), nil
	}
	return m.LinesClear(), err
}
