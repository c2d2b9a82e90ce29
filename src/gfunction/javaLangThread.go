/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"time"

	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/object"
)

func Load_Lang_Thread() {

	MethodSignatures["java/lang/Thread.registerNatives()V"] =
		GMeth{
			ParamSlots: 0,
			GFunction:  justReturn,
		}

	MethodSignatures["java/lang/Thread.sleep(J)V"] =
		GMeth{
			ParamSlots: 1,
			GFunction:  threadSleep,
		}

}

// "java/lang/Thread.sleep(J)V"
func threadSleep(params []interface{}) interface{} {
	v, ok := params[0].(object.Value)
	if !ok {
		return throwException(excNames.IllegalArgumentException, "Thread.sleep: argument must be a long")
	}
	time.Sleep(time.Duration(v.AsLong()) * time.Millisecond)
	return nil
}
