package main

import (
	"github.com/sirupsen/logrus"

	"novadent-crm/cmd/bootstrap"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	app.Run()
}
