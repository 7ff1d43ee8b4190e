package formx

type eventKind int

const (
	evField eventKind = iota
	evFileStarted
	evFileFinished
	evFileErrored
	evEndOfForm
	evFormError
)

type event struct {
	kind  eventKind
	name  string
	value string
	file  *File
	err   error
}

// collector folds parser events into a Form and tracks the completion
// predicate: the end of the form was seen and no file is pending.
type collector struct {
	form     *Form
	pending  int
	finished bool
	err      error
}

func newCollector() *collector {
	return &collector{
		form: &Form{
			Fields: make(map[string]string),
			Files:  make(map[string]*File),
		},
	}
}

func (c *collector) apply(ev event) {
	switch ev.kind {
	case evField:
		c.form.Fields[ev.name] = ev.value
	case evFileStarted:
		c.pending++
	case evFileFinished:
		c.form.Files[ev.name] = ev.file
		c.pending--
	case evFileErrored:
		// The file resolves as absent; the rest of the form still counts.
		c.pending--
	case evEndOfForm:
		c.finished = true
	case evFormError:
		c.err = ev.err
	}
}

// done is safe to call any number of times after any event.
func (c *collector) done() bool {
	return c.finished && c.pending == 0
}
