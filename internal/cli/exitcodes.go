package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a general error occurred.
	// Use for: Database errors, broken board invariants, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitFailure = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Deal not found or stage not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Stored data that cannot be loaded into a board.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty titles, unparseable amounts, moves past the board edge.
	ExitValidation = 5

	// ExitStaleMove indicates a move was based on an outdated view of the board.
	// Use for: A source position or board version that no longer matches.
	ExitStaleMove = 6
)
