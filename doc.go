// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package refetch provides an HTTP client which resubmits requests whose
attempts end in a retryable HTTP status or a transient transport
failure, up to a configurable retry ceiling.

Create a Client to begin making requests.

	client := &refetch.Client{}
	e, err := client.Get("https://www.example.com")
	...
	if e.Exhausted {
		// Still a 5XX after every retry.
	}

Retry decisions are made by a retry.Evaluator, which applies a
retry.Policy naming the retry ceiling, the retryable status codes and
the retryable transport failure kinds. Policies may be built in code or
loaded from YAML:

	cfg, err := retry.LoadConfig("retry.yaml")
	...
	policy, err := cfg.Policy()
	...
	logger, _ := zap.NewProduction()
	metrics, err := retrymetrics.New(prometheus.DefaultRegisterer)
	...
	client := &refetch.Client{
		Evaluator: retry.NewEvaluator(policy, retry.Sinks(retrylog.New(logger), metrics)),
	}

To suppress requests the client has already fetched, install a
duplicate filter. Resubmitted requests always pass it:

	client := &refetch.Client{
		Filter: dupefilter.New(),
	}

For control over the client's individual attempt timeouts, set a custom
timeout policy using package timeout:

	client := &refetch.Client{
		TimeoutPolicy: timeout.Fixed(10 * time.Second),
	}

To hook into the details of the client's fetch logic, install a handler
into the appropriate handler chain:

	handlers := &refetch.HandlerGroup{}
	handlers.PushBack(refetch.RetryScheduled, refetch.HandlerFunc(
		func(_ refetch.Event, e *request.Execution) {
			fmt.Printf("Retrying %s (%s)\n", e.Current, e.Reason)
		}),
	)
	client := &refetch.Client{
		Handlers: handlers,
	}
*/
package refetch
