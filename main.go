package main

import "github.com/evanrichards/tree-sorter-imports/internal/app"

func main() {
	app.Execute()
}
