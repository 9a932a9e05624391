package frames

// A DataFrame is a tool for constructing a chain of
// transformations and actions applied to tabular data.
// DataFrames are immutable: To returns a new DataFrame
// and never modifies the receiver.
type DataFrame interface {
	ID() string                                  // ID uniquely identifies this DataFrame
	GetSchema() Schema                           // GetSchema returns the Schema of a DataFrame
	GetDataSource() DataSource                   // GetDataSource returns the DataSource of a DataFrame
	GetParser() DataSourceParser                 // GetParser returns the DataSourceParser of a DataFrame
	GetTaskType() TaskType                       // GetTaskType returns the TaskType of the Task which produced this DataFrame
	To(...DataFrameOperation) (DataFrame, error) // To is a "functional operations" factory method for DataFrames, chaining operations onto the current one(s).
}
