// Package session handles the lifecycle of a game client.
//
// A client authenticates, loads the world snapshot, asks for a player and
// eventually disconnects. These handlers do not diff anything: they enumerate
// live state and send full snapshots. Chat also lives here since it is scoped
// to the client roster rather than to an entity.
//
// # Inbound kinds
//
//   - authenticate: the Authenticate hook decides. Accepted clients receive one
//     game_mod per published mod and game_start; rejected ones game_end(denied).
//   - load_game: spawn cell, every live object not held by a container, the game
//     clock, weather and game_load. Origin only.
//   - new_player: creates the player, picks a template, clones its inventory,
//     race and sex, then announces the player to every other client.
//   - disconnect: destroys the player and tells everyone to remove it.
//   - chat: the Chat hook may rewrite or veto; the line goes to every client.
package session
