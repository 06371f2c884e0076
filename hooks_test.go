package bloom

import (
	"bytes"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	requireLib "github.com/stretchr/testify/require"
)

func TestCapacityExceededFiresOnce(t *testing.T) {
	require := requireLib.New(t)
	var fired, completed atomic.Int32
	var reported *Filter
	hooks := NewHooks(&HookImpl{
		Stage: CapacityExceeded,
		BeforeFn: func(args ...interface{}) {
			fired.Add(1)
			reported = args[0].(*Filter)
		},
		AfterSuccessFn: func(args ...interface{}) {
			completed.Add(1)
			requireLib.Same(t, reported, args[0])
		},
	})
	logger, logHook := logrustest.NewNullLogger()

	filter, err := NewWithEstimates(100, 0.01, WithHooks(hooks), WithLogger(LogrusLogger(logger)))
	require.NoError(err)

	for i := 0; i < 50; i++ {
		filter.InsertUint64(uint64(i))
	}
	require.Zero(fired.Load(), "half full filter is within its capacity")
	require.Empty(logHook.AllEntries())

	wg := &sync.WaitGroup{}
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 50 + w*100; i < 50+(w+1)*100; i++ {
				filter.InsertUint64(uint64(i))
			}
		}(w)
	}
	wg.Wait()

	require.Equal(int32(1), fired.Load())
	require.Equal(int32(1), completed.Load(), "every Before must be followed by After")
	require.Same(filter, reported)
	require.Len(logHook.AllEntries(), 1)
	require.Equal(logrus.WarnLevel, logHook.LastEntry().Level)
	require.Equal("bloom", logHook.LastEntry().Data["component"])
	require.Contains(logHook.LastEntry().Message, "beyond its capacity")

	t.Run("fires again after reset", func(t *testing.T) {
		filter.Reset()
		for i := 0; i < 400; i++ {
			filter.InsertString(strconv.Itoa(i))
		}
		requireLib.Equal(t, int32(2), fired.Load())
		requireLib.Equal(t, int32(2), completed.Load())
	})
}

func TestCapacityExceededSilentAtCapacity(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		require := requireLib.New(t)
		var fired atomic.Int32
		hooks := NewHooks(&HookImpl{
			Stage:    CapacityExceeded,
			BeforeFn: func(args ...interface{}) { fired.Add(1) },
		})
		logger, logHook := logrustest.NewNullLogger()
		filter, err := NewWithEstimates(
			1000,
			0.01,
			WithSeeds(seed*0x9e3779b97f4a7c15, seed*0xc2b2ae3d27d4eb4f),
			WithHooks(hooks),
			WithLogger(LogrusLogger(logger)),
		)
		require.NoError(err)

		for i := 0; i < int(filter.Capacity()); i++ {
			filter.InsertString("item-" + strconv.Itoa(i))
		}
		require.Zerof(fired.Load(), "filter with seed %d holds exactly its capacity", seed)
		require.Empty(logHook.AllEntries())
	}
}

func TestResetHooks(t *testing.T) {
	require := requireLib.New(t)
	var stages []string
	hooks := NewHooks(&HookImpl{
		Stage:          ClearBits,
		BeforeFn:       func(args ...interface{}) { stages = append(stages, "before") },
		AfterSuccessFn: func(args ...interface{}) { stages = append(stages, "after") },
		AfterFailFn:    func(err error, args ...interface{}) { stages = append(stages, "fail") },
	})
	filter, err := NewWithEstimates(10, 0.1, WithHooks(hooks), WithLogger(NoOpLogger()))
	require.NoError(err)

	filter.Reset()
	require.Equal([]string{"before", "after"}, stages)
}

func TestRestoreHooks(t *testing.T) {
	require := requireLib.New(t)
	var restored *Filter
	var failures int
	hooks := NewHooks(&HookImpl{
		Stage: RestoreFromStream,
		AfterSuccessFn: func(args ...interface{}) {
			restored = args[0].(*Filter)
		},
		AfterFailFn: func(err error, args ...interface{}) {
			failures++
		},
	})

	var buf bytes.Buffer
	_, err := filledFilter(t, XXHash, 10).WriteTo(&buf)
	require.NoError(err)

	var logBuf bytes.Buffer
	filter, err := Restore(bytes.NewReader(buf.Bytes()), WithHooks(hooks), WithLogger(StdLogger(log.New(&logBuf, "", 0))))
	require.NoError(err)
	require.Same(filter, restored)
	require.Empty(logBuf.String(), "restores are reported through hooks only")

	_, err = Restore(bytes.NewReader([]byte("nope")), WithHooks(hooks), WithLogger(NoOpLogger()))
	require.Error(err)
	require.Equal(1, failures)
}

func TestHookImplAfter(t *testing.T) {
	require := requireLib.New(t)
	var success, fail int
	h := &HookImpl{
		AfterSuccessFn: func(args ...interface{}) { success++ },
		AfterFailFn:    func(err error, args ...interface{}) { fail++ },
	}
	h.After(nil)
	h.After(ErrCorruptPayload)
	require.Equal(1, success, "success callback must run once per After")
	require.Equal(1, fail)

	var nilHooks *Hooks
	require.NotPanics(func() {
		nilHooks.Before(ClearBits)
		nilHooks.After(ClearBits, nil)
	})
	require.Equal("CapacityExceeded", CapacityExceeded.String())
	require.Equal("RestoreFromStream", RestoreFromStream.String())
	require.Equal("unknown", Stage(42).String())
	require.Equal("unknown", Stage(-1).String())
}
