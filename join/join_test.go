package join_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/tandem/join"
	"github.com/kode4food/tandem/window"
)

type recordingOperator struct {
	calls []string
}

func (r *recordingOperator) OnLeft(k int, v string, _ window.Timestamp) error {
	r.calls = append(r.calls, "left:"+v)
	return nil
}

func (r *recordingOperator) OnRight(k int, v string, _ window.Timestamp) error {
	r.calls = append(r.calls, "right:"+v)
	return nil
}

func (r *recordingOperator) Close() error {
	return nil
}

func TestSymmetricMatchesEverything(t *testing.T) {
	as := assert.New(t)
	for _, p := range []window.Timestamp{0, 5, 100} {
		for _, s := range []window.Timestamp{0, 5, 100} {
			as.True(join.Symmetric.Matches(p, s))
		}
	}
}

func TestPriorDirectionality(t *testing.T) {
	as := assert.New(t)
	as.True(join.Prior.Matches(5, 5))
	as.True(join.Prior.Matches(6, 5))
	as.False(join.Prior.Matches(4, 5))
	as.False(join.Prior.Matches(0, 1))
}

func TestParseVariant(t *testing.T) {
	as := assert.New(t)

	v, err := join.ParseVariant("prior")
	as.Nil(err)
	as.Equal(join.Prior, v)
	as.Equal("prior", v.String())

	v, err = join.ParseVariant("symmetric")
	as.Nil(err)
	as.Equal(join.Symmetric, v)
	as.Equal("symmetric", v.String())

	_, err = join.ParseVariant("outer")
	as.ErrorIs(err, join.ErrUnknownVariant)
	as.Equal("variant(9)", join.Variant(9).String())
}

func TestDeliver(t *testing.T) {
	as := assert.New(t)

	op := &recordingOperator{}
	as.Nil(join.Deliver[int, string](op, join.LeftSide, 1, "a", 0))
	as.Nil(join.Deliver[int, string](op, join.RightSide, 1, "b", 0))
	as.ErrorIs(
		join.Deliver[int, string](op, join.Side(7), 1, "c", 0),
		join.ErrUnknownSide,
	)
	as.Equal([]string{"left:a", "right:b"}, op.calls)
}

func TestParseSide(t *testing.T) {
	as := assert.New(t)

	s, err := join.ParseSide("left")
	as.Nil(err)
	as.Equal(join.LeftSide, s)

	s, err = join.ParseSide("right")
	as.Nil(err)
	as.Equal(join.RightSide, s)
	as.Equal("right", s.String())

	_, err = join.ParseSide("middle")
	as.ErrorIs(err, join.ErrUnknownSide)
}

func TestJoiner(t *testing.T) {
	as := assert.New(t)

	j := join.Joiner(func(l, r string) string { return l + r })
	res, err := j("a", "b")
	as.Nil(err)
	as.Equal("ab", res)
}
