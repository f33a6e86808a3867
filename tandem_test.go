package tandem_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/tandem"
	"github.com/kode4food/tandem/join"
	"github.com/kode4food/tandem/join/config"
)

func TestNewWindowStore(t *testing.T) {
	as := assert.New(t)

	s, err := tandem.NewWindowStore[string, int](config.Name("counts"))
	as.Nil(err)
	as.Equal("counts", s.Name())

	s, err = tandem.NewWindowStore[string, int](config.Retention(-3))
	as.Nil(s)
	as.ErrorIs(err, config.ErrInvalidRetention)
}

func TestNewJoin(t *testing.T) {
	as := assert.New(t)

	var res []string
	op, err := tandem.NewJoin(
		join.Joiner(func(l, r string) string { return l + "+" + r }),
		func(k int, v string) error {
			res = append(res, fmt.Sprintf("%d:%s", k, v))
			return nil
		},
		config.Prior,
	)
	as.Nil(err)

	as.Nil(op.OnRight(1, "Y", 5))
	as.Nil(op.OnLeft(1, "X", 4))
	as.Nil(op.OnLeft(1, "X", 5))
	as.Equal([]string{"1:X+Y"}, res)
}

func TestNewJoinWithStores(t *testing.T) {
	as := assert.New(t)

	left, _ := tandem.NewWindowStore[int, string]()
	right, _ := tandem.NewWindowStore[int, string]()
	op, err := tandem.NewJoinWithStores(
		left, right,
		join.Joiner(func(l, r string) string { return l + r }),
		func(int, string) error { return nil },
		config.Symmetric, config.Symmetric,
	)
	as.Nil(op)
	as.ErrorIs(err, config.ErrVariantAlreadySet)
}

func ExampleNewJoin() {
	op, _ := tandem.NewJoin(
		join.Joiner(func(l, r string) string { return l + "+" + r }),
		func(k int, v string) error {
			fmt.Printf("%d:%s\n", k, v)
			return nil
		},
	)
	_ = op.OnLeft(0, "X0", 0)
	_ = op.OnLeft(0, "X0", 0)
	_ = op.OnRight(0, "Y0", 0)
	_ = op.OnRight(1, "Y1", 0)
	// Output:
	// 0:X0+Y0
	// 0:X0+Y0
}
