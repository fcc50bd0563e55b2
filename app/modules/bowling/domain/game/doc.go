// Package bowlinggame scores a single player's ten-pin bowling game.
//
// A Game owns ten frames: nine NormalFrames and a TenthFrame. Rolls are routed
// to the active frame, which validates them against its pin budget. Scores are
// computed on demand; a strike or spare looks ahead into the frames that
// follow it by position, so a game can be scored at any point and unresolved
// bonuses simply count as zero until their rolls arrive.
package bowlinggame
