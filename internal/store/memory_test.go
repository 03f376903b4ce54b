package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hiq/apps/go-server/internal/game"
)

func TestSaveAndDo(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s, err := game.New(game.Solitaire)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, s))
	assert.Equal(t, 1, st.Len())

	err = st.Do(ctx, s.ID, func(s *game.Session) error {
		_, err := s.SelectPeg(3, 1)
		return err
	})
	require.NoError(t, err)

	var left int
	require.NoError(t, st.Do(ctx, s.ID, func(s *game.Session) error {
		left = s.RemainingPegCount()
		return nil
	}))
	assert.Equal(t, 31, left)
}

func TestDoUnknown(t *testing.T) {
	st := NewMemoryStore()
	err := st.Do(context.Background(), "missing", func(*game.Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDoReturnsCallbackError(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s, err := game.New(game.Cross)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, s))

	boom := errors.New("boom")
	assert.ErrorIs(t, st.Do(ctx, s.ID, func(*game.Session) error { return boom }), boom)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s, err := game.New(game.Cross)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, s))
	require.NoError(t, st.Delete(ctx, s.ID))
	assert.Equal(t, 0, st.Len())
	assert.ErrorIs(t, st.Do(ctx, s.ID, func(*game.Session) error { return nil }), ErrNotFound)
}

func TestSaveRejectsNil(t *testing.T) {
	assert.Error(t, NewMemoryStore().Save(context.Background(), nil))
}

func TestDoSerializesCalls(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s, err := game.New(game.Solitaire)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, s))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Do(ctx, s.ID, func(s *game.Session) error {
				s.Reset()
				_, err := s.SelectPeg(3, 1)
				return err
			})
		}()
	}
	wg.Wait()

	require.NoError(t, st.Do(ctx, s.ID, func(s *game.Session) error {
		assert.Equal(t, 31, s.RemainingPegCount())
		assert.Equal(t, 1, s.Moves())
		return nil
	}))
}
