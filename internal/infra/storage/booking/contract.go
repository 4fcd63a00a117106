package booking

import "github.com/mymy770/activelaser/pkg/txmanager"

// Executor is the query surface the repository runs on: the pool outside a
// transaction, the transaction inside one.
type Executor = txmanager.Executor
