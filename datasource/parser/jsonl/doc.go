// Package jsonl parses JSON DataSources, either one object per line or (in MultiLine mode) a JSON array of objects.
// This parser uses https://github.com/tidwall/gjson to process data, and supports Schema column names formatted as gjson paths.
package jsonl
