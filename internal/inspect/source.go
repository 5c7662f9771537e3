package inspect

type (
	// An Element is a raw descriptor of an event store tree element.
	Element struct {
		Name     string
		TypeName string
		Class    string
	}

	// A Source is an opened event store.
	Source interface {
		// Name returns the name of the source implementation.
		Name() string
		// Files returns the paths of the files read by the source.
		Files() []string
		// Entries returns the number of events of the dataset.
		Entries() int64
		// Elements returns all the elements of the event store tree.
		Elements() []Element
		// Close releases the underlying files.
		Close() error
	}

	// A Values holds the decoded content of a variable over the whole dataset.
	Values struct {
		// Entries is the number of events read.
		Entries int64
		// Data holds every decoded item converted to float64.
		Data []float64
		// Items is the number of decoded items.
		Items int64
		// Bytes is the in-memory size of the decoded items.
		Bytes int64
	}

	// A ValueReader is a Source able to decode the content of its elements.
	ValueReader interface {
		Source
		// Read decodes all the entries of the named element.
		Read(element string) (*Values, error)
	}
)
