package initcmd

type (
	// Sent to update the total package count.
	EventSetPackageTotal int

	// Sent when generation for a package has started.
	EventGeneratingPackage string

	// Sent when a package has been generated, or when a fatal error
	// occurs during generation.
	EventGeneratedPackage struct {
		Err     error
		Package string
		Changed bool
	}

	// Sent when all work has completed.
	EventDone struct {
		Err error
	}
)
