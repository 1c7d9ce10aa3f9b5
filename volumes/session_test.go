package volumes

import (
	"context"
	"testing"

	"github.com/aukilabs/brunnr/featureflag"
	"github.com/stretchr/testify/require"
)

func TestSessionRun(t *testing.T) {
	t.Run("a pass publishes spaces and portals", func(t *testing.T) {
		s := NewSession(sealedBoxScene(), DefaultConfig(), featureflag.New(nil))

		summary := s.Run(context.Background())
		require.Equal(t, 1, summary.Spaces)
		require.Zero(t, summary.Portals)
		require.False(t, summary.FinishedAt.IsZero())

		spaces := s.Spaces()
		require.Len(t, spaces, 1)
		require.True(t, spaces[0].WillFill)
		require.Empty(t, s.Portals())
	})

	t.Run("repeated passes over unchanged geometry agree", func(t *testing.T) {
		s := NewSession(sealedBoxScene(), DefaultConfig(), featureflag.New(nil))

		first := s.Run(context.Background())
		firstBounds := s.Spaces()[0].Bounds

		second := s.Run(context.Background())
		require.Equal(t, first.Spaces, second.Spaces)
		require.Equal(t, first.Portals, second.Portals)
		require.Equal(t, firstBounds, s.Spaces()[0].Bounds)
	})

	t.Run("a draining scene yields portals", func(t *testing.T) {
		s := NewSession(lowDoorScene(), lowDoorConfig(), featureflag.New(nil))

		summary := s.Run(context.Background())
		require.Equal(t, 1, summary.Spaces)
		require.Equal(t, 1, summary.Portals)

		portals := s.Portals()
		require.Len(t, portals, 1)
		require.Equal(t, s.Spaces()[0], portals[0].Space)
	})

	t.Run("before any pass the results are empty", func(t *testing.T) {
		s := NewSession(sealedBoxScene(), DefaultConfig(), featureflag.New(nil))

		require.Empty(t, s.Spaces())
		require.Empty(t, s.Portals())
	})
}

func TestSessionWatch(t *testing.T) {
	t.Run("watchers receive pass summaries", func(t *testing.T) {
		s := NewSession(sealedBoxScene(), DefaultConfig(), featureflag.New(nil))

		ch := s.Watch()
		defer s.Unwatch(ch)

		summary := s.Run(context.Background())

		select {
		case received := <-ch:
			require.Equal(t, summary, received)
		default:
			t.Fatal("no summary received")
		}
	})

	t.Run("slow watchers miss summaries instead of blocking", func(t *testing.T) {
		s := NewSession(sealedBoxScene(), DefaultConfig(), featureflag.New(nil))

		ch := s.Watch()
		defer s.Unwatch(ch)

		s.Run(context.Background())
		s.Run(context.Background())

		<-ch
		select {
		case <-ch:
			t.Fatal("buffered more than one summary")
		default:
		}
	})

	t.Run("unwatched channels are closed and no longer notified", func(t *testing.T) {
		s := NewSession(sealedBoxScene(), DefaultConfig(), featureflag.New(nil))

		ch := s.Watch()
		s.Unwatch(ch)

		_, open := <-ch
		require.False(t, open)

		s.Run(context.Background())
	})
}
