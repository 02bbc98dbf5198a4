// Package classify answers "is this character alphanumeric?" by asking an
// actor that exists solely to answer for that one character.
//
// The [Service] lazily spawns one worker per distinct character in [0,255]
// and routes each Lookup as a request/reply exchange through that worker's
// mailbox. The service never caches or computes a classification itself;
// every query round-trips to the bound worker. Terminate stops every
// spawned worker.
//
//	svc := classify.New(classify.Options{})
//	defer svc.Terminate()
//
//	ok, err := svc.Lookup(ctx, 'A') // true, nil
package classify
