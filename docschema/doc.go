// Package docschema turns annotated block comments into structured,
// JSON-Schema-flavored documentation.
//
// Each comment block describes one callable. Its first line holds an
// optional "name:" prefix and a short description; the following lines
// form the full description. Tags describe the rest:
//
//	/**
//	 * createUser: Creates a user in the database
//	 *
//	 * @param {Object} user The user
//	 * @param {string} user.name=Ada - Name of the user
//	 * @param {Object[]} user.pets Pets of the user
//	 * @param {string} user.pets[].kind Kind of pet
//	 * @throws {ValidationError} ${field} is required
//	 * @secret apiKey Key used to sign requests
//	 * @returns {Object} The created user
//	 */
//
// # Extraction Pipeline
//
// [Extractor.ExtractBlock] processes a block in a fixed order:
//
//  1. Headline: the first line is split into name and description. An
//     explicit @name tag overrides the name; the first one wins.
//
//  2. Parameters: every @param tag is parsed into a flat record with a
//     normalized type and coerced example data. Records whose title is a
//     path ("a.b", "a[].b") are then folded into their root, which must be
//     declared earlier. A "." step requires an object parent, a "[]." step
//     an array of objects. Object-shaped parameters that received no
//     children fail with [ErrUnsupportedBareObject].
//
//  3. Throws: @throws tags, then @error tags, each in declaration order.
//     Descriptions of typed entries are compiled into [Errors].
//
//  4. Secrets and returns: @secret tags keep their order; only the first
//     @returns tag is kept, though every one is validated.
//
// A malformed tag fails the whole block. There is no partial document.
//
// # Types
//
// Type expressions are matched case-insensitively against null, boolean,
// object, array, number, string and file. One trailing "[]" makes an array
// of the base type. See [NormalizeType].
//
// # Example Data
//
// A parameter may carry example data after its name, as in
// "{number} count=3" or {string} greeting="hello world". The literal is
// coerced by [CoerceExample] according to the parameter's type.
//
// # Error Templates
//
// Error descriptions may contain ${...} placeholders. A placeholder holding
// a single identifier is replaced by that variable. Anything else is an
// expression evaluated with [github.com/expr-lang/expr] against the
// variables given to [Errors.Format]; every variable it names must be
// supplied.
//
//	msg, err := doc.Errors.Format("ValidationError", map[string]any{"field": "email"})
//
// # Output
//
// A [Document] marshals to JSON with errors rendered as their template
// source. [Document.InputSchema] describes the parameters as a JSON Schema
// object.
package docschema
