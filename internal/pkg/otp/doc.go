// Package otp wraps pquerna/otp for the TOTP codes a code entry session is
// checked against: secret provisioning, code generation and validation at a
// caller-supplied instant.
package otp
