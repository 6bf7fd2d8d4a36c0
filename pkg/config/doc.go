/*
Package config manages settings parsing and validation for tcxscale.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |           |           |
	+-----+-----+ +---+----+ +----+----+
	|   YAML    | |  JSON  | |   HCL   |
	|  Parser   | | Parser | | Parser  |
	+-----------+ +--------+ +---------+

🎯 Purpose:
- Loads the scaling settings from a file
- Validates whatever values are present
- Applies defaults for pattern and backup suffix
- Supports YAML, JSON, and HCL formats

🔄 Flow:
1. The CLI locates a settings file (explicit flag or .tcxscale.* search)
2. A format parser decodes the bytes into Config
3. Defaults fill the optional fields
4. Validation rejects values that can never be right

⚡ Key Responsibilities:
- Settings parsing
- Format detection by extension
- Default value management
- Structural validation

🤝 Interfaces:
- Parser: Format-specific parsing
- Config: Type-safe settings access

📝 Design Philosophy:
A settings file is optional and may be partial: the scale factor and
working folder can arrive later from flags or prompts. Validation here
therefore rejects only impossible values (a negative factor, an empty
backup suffix) and leaves completeness checks to the operation that
actually needs the value.

🔍 Example:

	cfg, err := config.Load(ctx, ".tcxscale.yaml")
	if err != nil {
		return err
	}
	fmt.Println(cfg.String()) // "scale 0.85 in /rides (*.tcx)"
*/
package config
