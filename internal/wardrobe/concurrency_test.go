package wardrobe

import (
	"errors"
	"testing"

	"github.com/liliang-cn/closet/internal/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestSharedSnapshot(t *testing.T) {
	defer goleak.VerifyNone(t)

	items := append(append(sampleCloset(), datedCloset()...), statsCloset()...)
	before := ids(items)

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		key := []domain.SortKey{domain.SortByName, domain.SortByPurchaseDate, domain.SortBySize}[i%3]
		g.Go(func() error {
			for j := 0; j < 50; j++ {
				sorted := Sort(Filter(items, domain.Criteria{}), key)
				if len(sorted) != len(items) {
					return errLen
				}
				s := Summarize(items)
				if s.WithTags+s.WithoutTags != len(items) {
					return errLen
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	require.Equal(t, before, ids(items))
}

var errLen = errors.New("unexpected result length")
