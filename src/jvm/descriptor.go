/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

// parseParamDescriptors splits a method descriptor's parameter section
// ("(ILjava/lang/String;[I)V" -> "I", "Ljava/lang/String;", "[I") into its
// individual field descriptors, in declaration order. Used by the invoke
// family to know how many operand-stack values to pop into the callee's
// locals, and by helper.go's array-conversion family is not needed here --
// this is purely call-site argument accounting.
func parseParamDescriptors(methodDescriptor string) []string {
	if len(methodDescriptor) == 0 || methodDescriptor[0] != '(' {
		return nil
	}
	var params []string
	i := 1
	for i < len(methodDescriptor) && methodDescriptor[i] != ')' {
		start := i
		for methodDescriptor[i] == '[' {
			i++
		}
		switch methodDescriptor[i] {
		case 'L':
			for methodDescriptor[i] != ';' {
				i++
			}
			i++
		default:
			i++
		}
		params = append(params, methodDescriptor[start:i])
	}
	return params
}
