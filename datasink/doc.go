// Package datasink writes the Rows of DataFrames to CSV, JSON lines or Parquet files
package datasink
