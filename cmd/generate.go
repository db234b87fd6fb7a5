package main

//go:generate echo "Generating SQLC files..."
//go:generate bash -c "export PATH=$$PATH:~/go/bin && sqlc generate -f ../storage/sqlc.yaml"
//go:generate echo "SQLC files generated"

//go:generate echo "CSS generation handled by npm run build:css"

// This file contains go:generate directives that regenerate the SQLC query
// code in storage/db. Run
//
// go generate ./...
//
// from the project root directory.
