package eval

import "fmt"

// ShapeMismatchError reports prediction and truth vectors of different
// lengths.
type ShapeMismatchError struct {
	Step string
	Got  int
	Want int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("eval: %s: got %d predictions for %d observations", e.Step, e.Got, e.Want)
}

// EmptyInputError reports an empty held-out set.
type EmptyInputError struct {
	Step string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("eval: %s: empty input", e.Step)
}

func checkShapes(step string, want, got int) error {
	if want == 0 {
		return &EmptyInputError{Step: step}
	}
	if got != want {
		return &ShapeMismatchError{Step: step, Got: got, Want: want}
	}
	return nil
}
