// Package inventory loads the Zhuyin phonetic inventory (consonants, vowels,
// tone examples with their example words and sentences) from the JSON file
// shared with the flashcard web player, or from an equivalent YAML file.
package inventory
