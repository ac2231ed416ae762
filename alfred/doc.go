// Package alfred renders script filter results for Alfred.
//
// Alfred reads an XML document from a script filter's stdout:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<items>
//	  <item uid="safari" valid="yes" arg="Safari">
//	    <title>Safari</title>
//	    <icon type="fileicon">/Applications/Safari.app</icon>
//	  </item>
//	</items>
//
// Empty fields are left out. An arg containing a newline is written as an
// <arg> element instead of an attribute, since attribute values cannot
// carry line breaks through XML attribute normalization.
package alfred
