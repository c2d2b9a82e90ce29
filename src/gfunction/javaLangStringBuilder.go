/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import "github.com/Nowilltolife/SSVM/src/object"

func Load_Lang_StringBuilder() {

	MethodSignatures["java/lang/StringBuilder.isLatin1()Z"] =
		GMeth{
			ParamSlots: 0,
			GFunction:  isLatin1,
		}

}

// "java/lang/StringBuilder.isLatin1()Z"
// TODO: distinguish StringLatin1 from StringUTF16 content once the string
// layout carries more than a flat [B/[C backing array.
func isLatin1([]interface{}) interface{} {
	return object.IntValue(1)
}
