// Package dcyclic contains fixed-capacity modular cursor arithmetic
// for bounded queues.
//
// [Index] owns no storage; it only tracks a read cursor and a write cursor
// over a capacity of N slots.
// One slot is always reserved so that an empty index
// and a full index are distinguishable,
// which means at most N-1 slots are readable at any time.
//
// [Ring] pairs an Index with backing storage,
// for producers that must never block on a slow consumer.
package dcyclic
