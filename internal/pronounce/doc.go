// Package pronounce decides what text is synthesized for a Zhuyin symbol.
// Vowels are spoken as their glyph; consonants can not be spoken alone and
// are paired with a vowel chosen by a named, swappable VowelPolicy, because
// some consonants only combine with front or back vowels.
package pronounce
