package data

// Schema describes the shape of the batches a Reader produces.
type Schema struct {
	// FeatureNames are the feature matrix columns, in order.
	FeatureNames []string
	// Label is the header name of the label column.
	Label string
	// Classes are the label matrix columns, in order.
	Classes []string
}
