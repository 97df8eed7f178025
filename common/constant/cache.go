package constant

// RewardKey is the hash holding one fan-club member's reward fields: <table>:<fanClubId>.
const RewardKey = "%s:%s"

const RewardPointsField = "rewardPoints"
