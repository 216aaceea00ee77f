// Package prompt asks validated questions on a terminal.
//
// A prompt is configured once and then called:
//
//	p, err := prompt.New(term, prompt.Config{
//	    Cue:        "Unmount /dev/sdb1? (y/n)",
//	    Keystroke:  true,
//	    Validation: prompt.Bool{},
//	})
//	if err != nil {
//	    return err
//	}
//	answer, err := p.Call()
//
// Invalid responses are answered with an alert and the question is asked
// again; Call only fails when the terminal does.
package prompt
