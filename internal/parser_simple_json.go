package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

// ParseSimpleJSON parses a JSON input file.
// Example:
//
//	{
//	  "debts": [
//	    {"name": "Credit Card A", "minimum_payment": 50, "total_owed": 5000,
//	     "current_apr": 18.99, "expires": "NA", "new_apr_on_expiry": 18.99, "usd": true}
//	  ],
//	  "expenses": [{"name": "Rent", "amount": 1200}],
//	  "income": [{"name": "Primary Job", "amount": 3500}]
//	}
//
// Numbers may also be given as strings; anything unparseable counts as zero.
func ParseSimpleJSON(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("reading file: %w", err)
	}

	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("parsing JSON: %w", err)
	}
	return in, nil
}

func init() {
	RegisterParser("simple-json", ParserFunc(ParseSimpleJSON))
}
