package hashlife

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mNodesNew = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashislife_store_nodes_new_count",
		Help: "Number of new quadtree nodes interned.",
	})
	mConsHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashislife_store_cons_hit_count",
		Help: "Number of Cons calls answered by an existing canonical node.",
	})

	mMemoHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashislife_step_memo_hit_count",
		Help: "Number of steps answered from a node's memoization slot.",
	})
	mMemoMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashislife_step_memo_miss_count",
		Help: "Number of steps that had to be computed.",
	})
)
