// README: Prediction results and the outcome of a single trigger.
package prediction

import "taxifare/internal/types"

type FareResult struct {
	Fare types.USD `json:"fare"`
}

// Outcome is the result of the latest trigger. Exactly one of Fare and Err is set.
type Outcome struct {
	Fare *FareResult
	Err  error
}

func Success(fare FareResult) *Outcome {
	return &Outcome{Fare: &fare}
}

func Failure(err error) *Outcome {
	return &Outcome{Err: err}
}
