// schema prints the postgres DDL for every model so atlas can diff it
// against a live database:
//
//	atlas schema diff --from "$DATABASE_URL" --to "external_schema://gorm"
package main

import (
	"cycleparadise/src/models"
	"fmt"
	"io"
	"os"

	"ariga.io/atlas-provider-gorm/gormschema"
)

func main() {
	if err := writeSchema(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load gorm schema: %v\n", err)
		os.Exit(1)
	}
}

func writeSchema(w io.Writer) error {
	stmts, err := gormschema.New("postgres").Load(models.All()...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, stmts)
	return err
}
