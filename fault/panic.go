/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package fault

import (
	"fmt"

	"github.com/pkg/errors"
)

// Panic is a recovered panic turned into an error.
type Panic struct {
	Value any
	trace errors.StackTrace
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Recovered wraps the value returned by recover(). It must be called from
// the deferred function so that the captured stack includes the panicking
// frames. Recovered returns nil when v is nil and v itself when v is already
// a *Panic.
func Recovered(v any) *Panic {
	if v == nil {
		return nil
	}
	if p, ok := v.(*Panic); ok {
		return p
	}
	st := errors.New("panic").(stackTracer).StackTrace()
	return &Panic{Value: v, trace: st}
}

func (p *Panic) Error() string { return fmt.Sprintf("panic: %v", p.Value) }

// Unwrap returns the panic value when it is an error.
func (p *Panic) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// StackTrace returns the stack captured at recovery.
func (p *Panic) StackTrace() errors.StackTrace { return p.trace }
