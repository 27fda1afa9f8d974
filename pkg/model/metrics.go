package model

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Evaluation accumulates a confusion matrix for a multi-class classifier.
// Rows of the matrix are actual classes, columns predicted classes.
type Evaluation struct {
	classes   []string
	confusion [][]int
}

// NewEvaluation returns an empty evaluation over the named classes.
func NewEvaluation(classes []string) *Evaluation {
	c := make([][]int, len(classes))
	for i := range c {
		c[i] = make([]int, len(classes))
	}
	return &Evaluation{classes: append([]string(nil), classes...), confusion: c}
}

// Eval adds one example per row: the actual class is the largest entry of the
// labels row, the predicted class the largest entry of the output row.
func (e *Evaluation) Eval(labels, output mat.Matrix) error {
	lr, lc := labels.Dims()
	or, oc := output.Dims()
	if lr != or || lc != oc || lc != len(e.classes) {
		return fmt.Errorf("%w: labels %dx%d, output %dx%d, %d classes",
			ErrShapeMismatch, lr, lc, or, oc, len(e.classes))
	}
	actual := make([]float64, lc)
	predicted := make([]float64, oc)
	for i := range lr {
		mat.Row(actual, i, labels)
		mat.Row(predicted, i, output)
		e.confusion[floats.MaxIdx(actual)][floats.MaxIdx(predicted)]++
	}
	return nil
}

// Count returns the number of examples evaluated.
func (e *Evaluation) Count() int {
	n := 0
	for _, row := range e.confusion {
		for _, v := range row {
			n += v
		}
	}
	return n
}

// Confusion returns a copy of the confusion matrix.
func (e *Evaluation) Confusion() [][]int {
	out := make([][]int, len(e.confusion))
	for i, row := range e.confusion {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Accuracy is the fraction of examples classified correctly.
func (e *Evaluation) Accuracy() float64 {
	n := e.Count()
	if n == 0 {
		return 0
	}
	c := 0
	for i := range e.confusion {
		c += e.confusion[i][i]
	}
	return float64(c) / float64(n)
}

// Precision of class c: correct predictions of c over all predictions of c.
func (e *Evaluation) Precision(c int) float64 {
	tp, predicted := e.confusion[c][c], 0
	for i := range e.confusion {
		predicted += e.confusion[i][c]
	}
	if predicted == 0 {
		return 0
	}
	return float64(tp) / float64(predicted)
}

// Recall of class c: correct predictions of c over all examples of c.
func (e *Evaluation) Recall(c int) float64 {
	tp, actual := e.confusion[c][c], 0
	for _, v := range e.confusion[c] {
		actual += v
	}
	if actual == 0 {
		return 0
	}
	return float64(tp) / float64(actual)
}

func (e *Evaluation) F1(c int) float64 {
	p, r := e.Precision(c), e.Recall(c)
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// MacroF1 averages F1 over all classes.
func (e *Evaluation) MacroF1() float64 {
	if len(e.classes) == 0 {
		return 0
	}
	s := 0.0
	for c := range e.classes {
		s += e.F1(c)
	}
	return s / float64(len(e.classes))
}

// Stats renders a plain-text report: misclassification lines, per-class scores,
// and the confusion matrix.
func (e *Evaluation) Stats() string {
	var sb strings.Builder
	for i, row := range e.confusion {
		for j, v := range row {
			if v > 0 && i != j {
				fmt.Fprintf(&sb, "Examples labeled as %s classified by model as %s: %d times\n",
					e.classes[i], e.classes[j], v)
			}
		}
	}
	fmt.Fprintf(&sb, "\n# of classes: %d\n", len(e.classes))
	fmt.Fprintf(&sb, "Examples:     %d\n", e.Count())
	fmt.Fprintf(&sb, "Accuracy:     %.4f\n", e.Accuracy())
	fmt.Fprintf(&sb, "Macro F1:     %.4f\n\n", e.MacroF1())

	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "class\tprecision\trecall\tf1\t")
	for c, name := range e.classes {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t\n", name, e.Precision(c), e.Recall(c), e.F1(c))
	}
	tw.Flush()

	sb.WriteString("\nConfusion matrix (rows = actual, columns = predicted):\n")
	tw = tabwriter.NewWriter(&sb, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for c := range e.classes {
		fmt.Fprintf(tw, "%d\t", c)
	}
	fmt.Fprintln(tw)
	for i, row := range e.confusion {
		fmt.Fprintf(tw, "%d\t", i)
		for _, v := range row {
			fmt.Fprintf(tw, "%d\t", v)
		}
		fmt.Fprintf(tw, " = %s\n", e.classes[i])
	}
	tw.Flush()
	return sb.String()
}
