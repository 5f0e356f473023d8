// Package httputil provides HTTP helpers shared by API clients.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff. Only errors wrapped
// in [RetryableError] are retried; everything else is returned at once:
//
//	err := httputil.Retry(ctx, 3, 200*time.Millisecond, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
//
// Transient failures worth retrying are network errors and 5xx responses.
// [IsRetryableStatus] classifies status codes.
package httputil
