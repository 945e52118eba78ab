// Package exhale hosts the exhale settings validator as an Fx application.
//
// The validation rules live in the conf package. This package wires them to a
// settings file loaded at start (WithSettingsFile) and to the HTTP validation
// service (WithValidationListener):
//
//	app := exhale.NewApp(
//		exhale.WithLogLevel("info"),
//		exhale.WithSettingsFile("docs/exhale.yaml", ""),
//		exhale.WithValidationListener("validate", listener.WithAddress(":8080")),
//	)
//	app.Run()
package exhale
