package fit

// Dimension is a named evaluative axis shared by all compared vectors. The
// question and anchor labels drive the slider UI; the order of the dimension
// slice determines chart axis placement and must stay stable.
type Dimension struct {
	Name     string `json:"name" yaml:"name"`
	Question string `json:"question" yaml:"question"`
	Low      string `json:"low" yaml:"low"`
	High     string `json:"high" yaml:"high"`
}

// DefaultDimensions returns the ten authored task dimensions.
func DefaultDimensions() []Dimension {
	return []Dimension{
		{
			Name:     "Repeatability",
			Question: "How repeatable is this task?",
			Low:      "Similar routine",
			High:     "Unique every time",
		},
		{
			Name:     "Variation",
			Question: "How much variation does the execution involve?",
			Low:      "Hardly any variation",
			High:     "Lots of variation",
		},
		{
			Name:     "Complexity",
			Question: "How complex is the task in terms of dependencies and variables?",
			Low:      "Simple and independent",
			High:     "Highly complex",
		},
		{
			Name:     "Pace",
			Question: "What should be the pace of task completion?",
			Low:      "Delay is acceptable",
			High:     "Real-time",
		},
		{
			Name:     "Scalability",
			Question: "How important is the ability to scale the task up or down?",
			Low:      "Stable, fixed workload",
			High:     "Needs to scale dynamically",
		},
		{
			Name:     "Data Structure",
			Question: "How structured is the input and output data or information?",
			Low:      "Standardised & structured",
			High:     "Highly unstructured",
		},
		{
			Name:     "Adaptability",
			Question: "How much adaptability is required over time?",
			Low:      "Stable and predictable",
			High:     "Needs frequent adjustment",
		},
		{
			Name:     "Impact",
			Question: "What is the impact of an error in this task?",
			Low:      "Low impact, easy to fix",
			High:     "High impact, costly/critical",
		},
		{
			Name:     "Explainability",
			Question: "How explainable should the decision-making be?",
			Low:      "Low need for explainability",
			High:     "High need for explainability",
		},
		{
			Name:     "Cost",
			Question: "How important is the cost per execution?",
			Low:      "Not important",
			High:     "Highly important",
		},
	}
}
