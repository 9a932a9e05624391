// Package dsv provides a DataSourceParser for delimiter-separated values, such as CSV files
package dsv
