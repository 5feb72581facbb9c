// Package async runs functions on their own goroutines and hands their
// results back over channels.
package async

// Promise runs f on a new goroutine. The returned channel yields its result once.
func Promise[R any](f func() R) <-chan R {
	out := make(chan R, 1)
	go func() {
		out <- f()
	}()
	return out
}
