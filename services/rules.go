package services

// RulesText is the static primer shown on the league front page and served
// at its own endpoint.
var RulesText = []string{
	"What is a Swiss-style Tournament?",
	"Tournaments aim to determine the best player in a competition. The most thorough way is to make every participant play every other participant, with the highest score at the end winning. This is called a \"Round-Robin\" tournament.",
	"The problem with a Round-Robin tournament is that it does not scale to large fields. A 4-player round-robin needs 3 rounds, but 32 players would need 31 rounds, which is a logistical nightmare.",
	"Swiss-style tournaments were developed to counteract this problem. They follow two rules:",
	"Participants are paired with opponents who have similar scores.",
	"Participants cannot play the same opponent twice.",
	"This way the league keeps pairing similarly ranked players until a winner emerges, in far fewer rounds: a 32-player Swiss event resolves in about 5 rounds instead of 31.",
	"Pairings for each round are generated automatically once every result from the previous rounds has been entered.",
}
