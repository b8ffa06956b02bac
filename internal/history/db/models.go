package db

type Run struct {
	ID            int64
	StartedAt     int64
	Service       string
	Ro            string
	Minim         string
	Purpose       string
	Template      string
	EvaluationUri string
	TurtleBytes   int64
	RdfxmlBytes   int64
	Error         string
}
