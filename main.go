package main

import "runlog/internal/app"

func main() {
	app.Execute()
}
