// Package sqlspec translates specifications into parameterised SQL.
//
// Members of the predicate parameter become columns, constants become bind
// arguments. The result is the body of a WHERE clause, without the keyword:
//
//	enc := sqlspec.NewEncoder(&sqlspec.EncoderOptions{Placeholder: sqlspec.Dollar})
//	where, args, err := sqlspec.Where(enc, spec)
//	rows, err := db.QueryContext(ctx, "SELECT * FROM users WHERE "+where, args...)
//
// String methods map to the closest SQL function and are not exact:
//
//   - TrimSpace becomes TRIM, which strips spaces only, not tabs or newlines.
//   - EqualFold becomes LOWER(a) = LOWER(b). That is simple lower casing in
//     the database collation, not Unicode case folding.
//   - Contains becomes LIKE only when the target is a string. Element tests
//     on slices are rejected by Where. Encode does not know the parameter
//     type and treats every target as a string.
//
// Quantifiers, nested members and members of anything other than the
// parameter cannot be expressed and fail with ErrUnsupported.
package sqlspec
