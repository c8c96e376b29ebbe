package anonymize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultHashLength is the number of hexadecimal characters retained from the digest.
	//
	// Eight characters (32 bits) are an accepted precision/collision trade-off:
	// reports stay readable and practical batch sizes stay collision-free.
	DefaultHashLength = 8

	messageHashPrefixConstant         = "hash_"
	repositoryHashPrefixConstant      = "repo_"
	emptyMessageSentinelConstant      = "empty"
	unknownRepositorySentinelConstant = "unknown"
	kindHashTemplateConstant          = "%s_hash_%s"
	kindEmptySentinelTemplateConstant = "%s_empty"
	commitKindNameConstant            = "commit"
)

// conventionalCommitTypes is the single source of truth for recognized
// conventional-commit keywords.
var conventionalCommitTypes = []string{
	"feat", "fix", "docs", "style", "refactor", "perf",
	"test", "chore", "build", "ci", "revert",
}

// conventionalCommitPrefixPattern matches an optional conventional-commit
// prefix: a recognized keyword (case-insensitive), an optional parenthesized
// scope of word characters and hyphens, a colon, and optional whitespace.
var conventionalCommitPrefixPattern = regexp.MustCompile(
	`(?i)^(` + strings.Join(conventionalCommitTypes, "|") + `)(\([\w-]+\))?:\s*`,
)

// Hash computes the sha256 digest of input and returns its first length
// hexadecimal characters. The output depends only on the input value.
func Hash(input string, length int) string {
	digest := sha256.Sum256([]byte(input))
	hexDigest := hex.EncodeToString(digest[:])
	if length <= 0 || length > len(hexDigest) {
		return hexDigest
	}
	return hexDigest[:length]
}

// Message anonymizes a commit message while preserving a recognized
// conventional-commit prefix exactly as written, including its original case
// and scope. Messages without a recognized prefix are hashed whole. Empty
// messages map to the fixed empty sentinel so repeated runs stay identical.
func Message(message string) string {
	if len(message) == 0 {
		return messageHashPrefixConstant + Hash(emptyMessageSentinelConstant, DefaultHashLength)
	}

	prefixLocation := conventionalCommitPrefixPattern.FindStringIndex(message)
	if prefixLocation == nil {
		return messageHashPrefixConstant + Hash(message, DefaultHashLength)
	}

	preservedPrefix := message[:prefixLocation[1]]
	remainder := message[prefixLocation[1]:]
	return preservedPrefix + messageHashPrefixConstant + Hash(remainder, DefaultHashLength)
}

// Repository anonymizes a repository identifier as a whole; no structure is
// preserved. Empty identifiers map to the fixed unknown sentinel.
func Repository(repository string) string {
	if len(repository) == 0 {
		return repositoryHashPrefixConstant + Hash(unknownRepositorySentinelConstant, DefaultHashLength)
	}
	return repositoryHashPrefixConstant + Hash(repository, DefaultHashLength)
}

// Text anonymizes free-form contribution text according to the contribution
// kind (commit, pr, or review). Commit text delegates to Message so
// conventional-commit prefixes survive anonymization.
func Text(text string, kind string) string {
	if len(text) == 0 {
		emptySentinel := fmt.Sprintf(kindEmptySentinelTemplateConstant, kind)
		return fmt.Sprintf(kindHashTemplateConstant, kind, Hash(emptySentinel, DefaultHashLength))
	}
	if kind == commitKindNameConstant {
		return Message(text)
	}
	return fmt.Sprintf(kindHashTemplateConstant, kind, Hash(text, DefaultHashLength))
}
