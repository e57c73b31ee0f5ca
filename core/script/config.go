package script

// Config holds the scripting settings.
type Config struct {
	// LuaPath is the script loaded into the LuaHost. Empty disables Lua.
	LuaPath string `mapstructure:"lua_path" default:""`
	// JournalDir receives the hourly event journal files. Empty disables the journal.
	JournalDir string `mapstructure:"journal_dir" default:""`
	// JournalPrefix names the journal files.
	JournalPrefix string `mapstructure:"journal_prefix" default:"events"`
	// RingSize is the number of recent events kept for the admin API.
	RingSize int `mapstructure:"ring_size" default:"512"`
}
