// Package prof holds the pieces shared by the EProf and DProf profile formats.
//
// # Layout
//
// Both formats open with the same header and configuration block:
//
//	magic     4-byte tag, int16 add_mode, int16 version
//	common    run configuration (ReadCommonInfo)
//	  [pa]    PA discriminator and event category, iff the PA option bit is set
//	payload   format specific (packages eprof and dprof)
//
// Every multi-byte field is encoded in the byte order chosen by the caller;
// nothing in the file says which one was used.
//
// # Errors
//
// Decode failures match one of ErrInvalidMagic, ErrUnsupportedVersion,
// ErrUnknownCategory, binio.ErrTruncated or binio.ErrInvalidLength with
// errors.Is. Typed errors (MagicError, VersionError, CategoryError) carry the
// offending values.
package prof
