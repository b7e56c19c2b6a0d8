package parser

import (
	"encoding/json"
	"testing"
)

func TestNodeMarshalJSON(t *testing.T) {
	stmt := mustParse(t, "-0*2;")

	data, err := json.Marshal(stmt)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	want := `{"kind":"Statement","children":[` +
		`{"kind":"Expression","children":[` +
		`{"kind":"Op","op":"-"},` +
		`{"kind":"Term","children":[` +
		`{"kind":"Factor","children":[{"kind":"Number","value":0}]},` +
		`{"kind":"Op","op":"*"},` +
		`{"kind":"Factor","children":[{"kind":"Number","value":2}]}` +
		`]}]}]}`
	if string(data) != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", data, want)
	}
}
