// Package theme loads theme documents and turns them into CSS custom
// properties. Themes come from ~/.config/themepanel/themes/ or from the
// bundled set, and may extend other themes.
package theme
