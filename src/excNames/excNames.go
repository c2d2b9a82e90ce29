/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package excNames holds the fully-qualified internal names of the bootstrap
// exception/error classes the VM raises directly (the error taxonomy of
// spec §7). Each constant is a class name in internal (slash) form, suitable
// for a throwException(class, ...) call.
package excNames

const (
	NoClassDefFoundError          = "java/lang/NoClassDefFoundError"
	ClassNotFoundException        = "java/lang/ClassNotFoundException"
	NoSuchMethodError             = "java/lang/NoSuchMethodError"
	NoSuchFieldError              = "java/lang/NoSuchFieldError"
	ClassCastException            = "java/lang/ClassCastException"
	NullPointerException          = "java/lang/NullPointerException"
	ArrayIndexOutOfBoundsException = "java/lang/ArrayIndexOutOfBoundsException"
	NegativeArraySizeException    = "java/lang/NegativeArraySizeException"
	IllegalArgumentException      = "java/lang/IllegalArgumentException"
	IllegalStateException         = "java/lang/IllegalStateException"
	ArithmeticException           = "java/lang/ArithmeticException"
	AbstractMethodError           = "java/lang/AbstractMethodError"
	UnsatisfiedLinkError          = "java/lang/UnsatisfiedLinkError"
	BootstrapMethodError          = "java/lang/BootstrapMethodError"
	ExceptionInInitializerError   = "java/lang/ExceptionInInitializerError"
	OutOfMemoryError              = "java/lang/OutOfMemoryError"
	InterruptedException          = "java/lang/InterruptedException"
	IOException                   = "java/io/IOException"
	RuntimeException              = "java/lang/RuntimeException"
	StringIndexOutOfBoundsException = "java/lang/StringIndexOutOfBoundsException"
)
