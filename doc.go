// Package forkjoin provides portable worker-identity allocation for
// fork-join parallel workloads.
//
// Parallel task and loop bodies frequently need a small, bounded, reusable
// integer – a worker lane – to index per-worker scratch state.  Which lane a
// body gets must not depend on the fork-join backend executing it, so the
// engine comes with pluggable layers:
//
//   - lane      – bounded FIFO pool of reusable worker identities
//   - scheduler – fork-join capability with two conforming backends
//   - policy    – nesting depth control for regions inside regions
//   - progress  – lane-usage counters for monitoring and tests
//
// forkjoin is designed to be embedded in host applications.  End-users
// typically interact with the engine via the high-level Service façade
// exposed by the root package:
//
//	srv, _ := forkjoin.New(forkjoin.WithWorkers(4))
//	ctx := srv.NewContext(context.Background())
//	_ = srv.ForEach(ctx, 16, func(ctx context.Context, i int) error {
//		return srv.WithLane(ctx, func(ctx context.Context, lane int) error {
//			scratch[lane].process(i)
//			return nil
//		})
//	})
//	_ = srv.Shutdown(ctx)
//
// For more details see the individual sub-packages.
package forkjoin
